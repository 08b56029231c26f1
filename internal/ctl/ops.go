package ctl

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
)

type opKind byte

// Operations with a key are written as a prefix character and the key,
// e.g. "+5". The others are produced by script verbs only.
const (
	opInsert opKind = '+'
	opDelete opKind = '-'
	opSearch opKind = '?'
	opPrint  opKind = 'p'
	opDot    opKind = 'd'
	opCheck  opKind = 'c'
	opClear  opKind = 'z'
)

type operation struct {
	kind opKind
	arg  string
}

func (op operation) String() string {
	switch op.kind {
	case opInsert, opDelete, opSearch:
		return string(op.kind) + op.arg
	}
	for verb, kind := range scriptCommands {
		if kind == op.kind {
			return verb
		}
	}
	return "?"
}

func parseOperation(tok string) (operation, error) {
	if len(tok) < 2 {
		return operation{}, errors.Errorf("malformed operation %q", tok)
	}
	switch k := opKind(tok[0]); k {
	case opInsert, opDelete, opSearch:
		return operation{kind: k, arg: tok[1:]}, nil
	}
	return operation{}, errors.Errorf("unknown operation %q, use +key, -key or ?key", tok)
}

func parseOperations(args []string) ([]operation, error) {
	ops := make([]operation, 0, len(args))
	for _, arg := range args {
		op, err := parseOperation(arg)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// --- Scripts ---------------------------------------------------------------

var keyedCommands = map[string]opKind{
	"insert": opInsert,
	"delete": opDelete,
	"search": opSearch,
}

var scriptCommands = map[string]opKind{
	"print": opPrint,
	"dot":   opDot,
	"check": opCheck,
	"clear": opClear,
}

// parseScript reads one command per line. Blank lines and lines starting
// with '#' are skipped. Besides verbs, a line may hold operations in the
// notation of the run command.
func parseScript(r io.Reader) ([]operation, error) {
	var ops []operation
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellwords.Parse(line)
		if err != nil {
			return nil, errors.Annotatef(err, "line %d", lineno)
		}
		lineOps, err := parseScriptLine(words)
		if err != nil {
			return nil, errors.Annotatef(err, "line %d", lineno)
		}
		ops = append(ops, lineOps...)
	}
	return ops, errors.WithStack(scanner.Err())
}

func parseScriptLine(words []string) ([]operation, error) {
	verb := strings.ToLower(words[0])
	if kind, ok := keyedCommands[verb]; ok {
		if len(words) < 2 {
			return nil, errors.Errorf("%s needs at least one key", verb)
		}
		ops := make([]operation, len(words)-1)
		for i, key := range words[1:] {
			ops[i] = operation{kind: kind, arg: key}
		}
		return ops, nil
	}
	if kind, ok := scriptCommands[verb]; ok {
		if len(words) > 1 {
			return nil, errors.Errorf("%s takes no arguments", verb)
		}
		return []operation{{kind: kind}}, nil
	}
	return parseOperations(words)
}
