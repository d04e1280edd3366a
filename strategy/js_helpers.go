package strategy

// JavaScript counterparts of the injected helpers.

const jsLinkedListHelpers = `function ListNode(val, next) {
    this.val = (val === undefined ? 0 : val);
    this.next = (next === undefined ? null : next);
}

function _arrToList(arr, pos) {
    if (arr === null || arr === undefined) return null;
    if (pos === undefined) pos = -1;
    const nodes = arr.map((v) => new ListNode(v));
    for (let i = 0; i + 1 < nodes.length; i++) nodes[i].next = nodes[i + 1];
    if (nodes.length > 0 && pos !== null && pos >= 0) {
        nodes[nodes.length - 1].next = nodes[pos];
    }
    return nodes.length > 0 ? nodes[0] : null;
}

function _listToArr(head) {
    const out = [];
    const seen = new Set();
    while (head !== null && head !== undefined && !seen.has(head)) {
        seen.add(head);
        out.push(head.val);
        head = head.next;
    }
    return out;
}
`

const jsBinaryTreeHelpers = `function TreeNode(val, left, right) {
    this.val = (val === undefined ? 0 : val);
    this.left = (left === undefined ? null : left);
    this.right = (right === undefined ? null : right);
}

function _arrToTree(arr) {
    if (!arr || arr.length === 0) return null;
    const root = new TreeNode(arr[0]);
    const queue = [root];
    let i = 1;
    while (queue.length > 0 && i < arr.length) {
        const node = queue.shift();
        if (i < arr.length) {
            const v = arr[i++];
            if (v !== null) {
                node.left = new TreeNode(v);
                queue.push(node.left);
            }
        }
        if (i < arr.length) {
            const v = arr[i++];
            if (v !== null) {
                node.right = new TreeNode(v);
                queue.push(node.right);
            }
        }
    }
    return root;
}

function _treeToArr(root) {
    if (root === null || root === undefined) return [];
    const out = [];
    const queue = [root];
    while (queue.length > 0) {
        const node = queue.shift();
        if (node === null || node === undefined) {
            out.push(null);
            continue;
        }
        out.push(node.val);
        queue.push(node.left);
        queue.push(node.right);
    }
    while (out.length > 0 && out[out.length - 1] === null) out.pop();
    return out;
}

function _findNode(root, val) {
    if (root === null || root === undefined) return null;
    if (root.val === val) return root;
    return _findNode(root.left, val) || _findNode(root.right, val);
}
`

const jsGraphHelpers = `function _GraphNode(val, neighbors) {
    this.val = (val === undefined ? 0 : val);
    this.neighbors = (neighbors === undefined ? [] : neighbors);
}
if (typeof Node === "undefined") {
    var Node = _GraphNode;
}

function _adjToGraph(adj) {
    if (!adj || adj.length === 0) return null;
    const nodes = {};
    for (let i = 0; i < adj.length; i++) nodes[i + 1] = new Node(i + 1);
    for (let i = 0; i < adj.length; i++) {
        nodes[i + 1].neighbors = adj[i].map((v) => nodes[v]);
    }
    return nodes[1];
}

function _graphToAdj(node) {
    if (node === null || node === undefined) return [];
    const adj = {};
    const queue = [node];
    const seen = new Set([node.val]);
    while (queue.length > 0) {
        const cur = queue.shift();
        adj[cur.val] = cur.neighbors.map((n) => n.val);
        for (const n of cur.neighbors) {
            if (!seen.has(n.val)) {
                seen.add(n.val);
                queue.push(n);
            }
        }
    }
    const vals = Object.keys(adj).map(Number).sort((a, b) => a - b);
    return vals.map((v) => adj[v]);
}
`
