package extract

import (
	"strings"

	"github.com/hrsync/backend/hackerrank"
	"github.com/hrsync/backend/plang"
)

// placeholderLabel is the literal selector label shown before the user
// picks a language. It must never be accepted as a candidate.
const placeholderLabel = "language"

// Language extracts the canonical language id from a page snapshot,
// trying each strategy in order: visible selector value, data
// attribute, editor-reported language id, URL query parameter, content
// heuristics. Every candidate passes through the normalizer; the fixed
// default is the final fallback.
func Language(snap PageSnapshot) string {
	candidates := []string{
		snap.LanguageSelector,
		snap.LanguageDataAttr,
		snap.EditorLanguageID,
		hackerrank.LanguageFromURL(snap.URL),
	}
	for _, raw := range candidates {
		if id, ok := acceptCandidate(raw); ok {
			return id
		}
	}

	code := snap.EditorValue
	if code == "" {
		code = snap.TextareaValue
	}
	if id := guessFromContent(code); id != "" {
		return id
	}
	return plang.DefaultLangID
}

func acceptCandidate(raw string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" || trimmed == placeholderLabel {
		return "", false
	}
	id := plang.Normalize(raw)
	if !plang.IsKnown(id) {
		return "", false
	}
	return id, true
}

// contentHints are characteristic fragments per language, checked in
// order. Shebangs win over keyword hints.
var contentHints = []struct {
	fragment string
	langID   string
}{
	{"#!/bin/python3", "python3"},
	{"#!/usr/bin/python", "python3"},
	{"#!/bin/bash", "bash"},
	{"#!/bin/sh", "bash"},
	{"package main", "go"},
	{"func main(", "go"},
	{"#include <", "cpp"},
	{"using namespace std", "cpp"},
	{"public static void main", "java"},
	{"import java.", "java"},
	{"console.log(", "javascript"},
	{"process.stdin", "javascript"},
	{"def ", "python3"},
	{"print(", "python3"},
	{"puts ", "ruby"},
	{"fn main(", "rust"},
	{"select ", "sql"},
}

func guessFromContent(code string) string {
	lowered := strings.ToLower(code)
	for _, hint := range contentHints {
		if strings.Contains(lowered, strings.ToLower(hint.fragment)) {
			return hint.langID
		}
	}
	return ""
}
