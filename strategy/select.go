package strategy

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/algoprep/grader/callplan"
)

//go:embed allowlists.toml
var allowlistsToml []byte

type allowlists struct {
	EncodeDecode         []string `toml:"encode_decode"`
	SerializeDeserialize []string `toml:"serialize_deserialize"`
	SmartCompare         []string `toml:"smart_compare"`
}

var (
	encodeDecodeProblems mapset.Set[string]
	serializeProblems    mapset.Set[string]
	smartCompareProblems mapset.Set[string]
)

func init() {
	var lists allowlists
	if err := toml.Unmarshal(allowlistsToml, &lists); err != nil {
		panic(fmt.Errorf("failed to parse embedded allowlists: %w", err))
	}
	encodeDecodeProblems = mapset.NewSet(lists.EncodeDecode...)
	serializeProblems = mapset.NewSet(lists.SerializeDeserialize...)
	smartCompareProblems = mapset.NewSet(lists.SmartCompare...)
}

// IsSmartCompare reports whether the problem's outputs are known to be
// order-independent, enabling normalized comparison.
func IsSmartCompare(problemID string) bool {
	return smartCompareProblems.Contains(problemID)
}

// Select picks the code-generation strategy for a submission. Problem
// identity takes priority for the round-trip strategies; every other
// kind follows from the resolved call plan. Selection is a pure
// function of its inputs and the returned strategy is stateless.
func Select(problemID string, source string, plan callplan.CallPlan) Strategy {
	if encodeDecodeProblems.Contains(problemID) || hasPair(source, "encode", "decode") {
		return roundTripStrategy{kind: EncodeDecode, first: "encode", second: "decode"}
	}
	if serializeProblems.Contains(problemID) || hasPair(source, "serialize", "deserialize") {
		return roundTripStrategy{kind: SerializeDeserialize, first: "serialize", second: "deserialize"}
	}

	if plan.CallKind == callplan.StatefulClass {
		return classBasedStrategy{}
	}

	switch dominantStructKind(plan) {
	case callplan.LinkedList:
		return linkedListStrategy{}
	case callplan.BinaryTree:
		return binaryTreeStrategy{}
	case callplan.Graph:
		return graphStrategy{}
	}
	return standardStrategy{}
}

// hasPair requires definitions of both halves of the pair, not mere
// calls, so a stray call to a helper named "decode" never flips a
// problem into round-trip grading.
func hasPair(source, first, second string) bool {
	return definesFunc(source, first) && definesFunc(source, second)
}

var methodDefRes = map[string]*regexp.Regexp{}
var methodDefResMu sync.Mutex

func definesFunc(source, name string) bool {
	if strings.Contains(source, "def "+name+"(") {
		return true
	}
	methodDefResMu.Lock()
	re, ok := methodDefRes[name]
	if !ok {
		re = regexp.MustCompile(`(?m)^\s*(?:public\s+\w[\w<>\[\], ]*\s+)?` + name + `\s*\([^)]*\)\s*\{`)
		methodDefRes[name] = re
	}
	methodDefResMu.Unlock()
	return re.MatchString(source)
}

func dominantStructKind(plan callplan.CallPlan) callplan.StructKind {
	if plan.ReturnsStructural != callplan.StructNone {
		return plan.ReturnsStructural
	}
	for _, name := range plan.ParamNames {
		if k := plan.ParamKind(name); k != callplan.StructNone {
			return k
		}
	}
	return callplan.StructNone
}
