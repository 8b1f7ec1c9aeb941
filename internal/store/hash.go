package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/aquaa/alphamath/internal/explain"
)

// Domain prefixes for content-addressed identity. The version suffix
// leaves room for a future change of algorithm.
const (
	DomainProblem = "alphamath/problem/v1"
	DomainAnswer  = "alphamath/answer/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeInput is the form of an input used for identity: NFC, trimmed,
// with runs of whitespace collapsed to one space.
func NormalizeInput(input string) string {
	return strings.Join(strings.Fields(norm.NFC.String(input)), " ")
}

// ProblemID identifies a problem independently of when it was solved.
// Inputs differing only in whitespace or Unicode composition share an ID.
func ProblemID(solver, input string) (string, error) {
	data, err := marshalCanonical(map[string]string{
		"input":  NormalizeInput(input),
		"solver": strings.ToLower(solver),
	})
	if err != nil {
		return "", fmt.Errorf("ProblemID: %w", err)
	}
	return hashWithDomain(DomainProblem, data), nil
}

// AnswerHash identifies the steps and failure of an explanation. The input
// is not part of the hash.
func AnswerHash(e *explain.Explanation) (string, error) {
	data, err := marshalCanonical(struct {
		Steps   []explain.Step   `json:"steps"`
		Failure *explain.Failure `json:"failure,omitempty"`
	}{e.Steps, e.Failure})
	if err != nil {
		return "", fmt.Errorf("AnswerHash: %w", err)
	}
	return hashWithDomain(DomainAnswer, data), nil
}

// marshalCanonical encodes v as JSON with NFC strings and no HTML
// escaping. Map keys come out sorted and struct fields in declaration
// order, which is all the canonical form needs for these fixed shapes.
func marshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(norm.NFC.Bytes(buf.Bytes()), []byte("\n")), nil
}
