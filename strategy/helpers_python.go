package strategy

// Helper definitions injected ahead of the user's code for Python
// targets. They are injected first so a user-supplied definition of the
// same class shadows ours; converters resolve the class at call time.

const pyLinkedListHelpers = `class ListNode:
    def __init__(self, val=0, next=None):
        self.val = val
        self.next = next

def _arr_to_list(arr, pos=-1):
    if arr is None:
        return None
    nodes = [ListNode(v) for v in arr]
    for _a, _b in zip(nodes, nodes[1:]):
        _a.next = _b
    if nodes and pos is not None and pos >= 0:
        nodes[-1].next = nodes[pos]
    return nodes[0] if nodes else None

def _list_to_arr(head):
    out = []
    seen = set()
    while head is not None and id(head) not in seen:
        seen.add(id(head))
        out.append(head.val)
        head = head.next
    return out
`

const pyBinaryTreeHelpers = `class TreeNode:
    def __init__(self, val=0, left=None, right=None):
        self.val = val
        self.left = left
        self.right = right

def _arr_to_tree(arr):
    if not arr:
        return None
    _it = iter(arr)
    root = TreeNode(next(_it))
    _queue = collections.deque([root])
    while _queue:
        _node = _queue.popleft()
        try:
            _v = next(_it)
            if _v is not None:
                _node.left = TreeNode(_v)
                _queue.append(_node.left)
            _v = next(_it)
            if _v is not None:
                _node.right = TreeNode(_v)
                _queue.append(_node.right)
        except StopIteration:
            break
    return root

def _tree_to_arr(root):
    if root is None:
        return []
    out = []
    _queue = collections.deque([root])
    while _queue:
        _node = _queue.popleft()
        if _node is None:
            out.append(None)
            continue
        out.append(_node.val)
        _queue.append(_node.left)
        _queue.append(_node.right)
    while out and out[-1] is None:
        out.pop()
    return out

def _find_node(root, val):
    if root is None:
        return None
    if root.val == val:
        return root
    return _find_node(root.left, val) or _find_node(root.right, val)
`

const pyGraphHelpers = `class Node:
    def __init__(self, val=0, neighbors=None):
        self.val = val
        self.neighbors = neighbors if neighbors is not None else []

def _adj_to_graph(adj):
    if not adj:
        return None
    _nodes = {i + 1: Node(i + 1) for i in range(len(adj))}
    for _i, _neighbors in enumerate(adj):
        _nodes[_i + 1].neighbors = [_nodes[_v] for _v in _neighbors]
    return _nodes[1]

def _graph_to_adj(node):
    if node is None:
        return []
    _adj = {}
    _queue = collections.deque([node])
    _seen = {node.val}
    while _queue:
        _cur = _queue.popleft()
        _adj[_cur.val] = [n.val for n in _cur.neighbors]
        for _n in _cur.neighbors:
            if _n.val not in _seen:
                _seen.add(_n.val)
                _queue.append(_n)
    return [_adj[_v] for _v in sorted(_adj)]
`
