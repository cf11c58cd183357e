package main

import (
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
)

// readClipboardText returns the clipboard as plain text suitable for a
// hotspot or note.
func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return cleanClipboardText(string(output)), nil
		}
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return cleanClipboardText(text), nil
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func looksLikeHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	for _, tag := range []string{"<html", "<body", "<div", "<p", "<span"} {
		if strings.Contains(trimmed, tag) {
			return true
		}
	}
	return false
}

func looksLikeRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf")
}

func htmlToText(html string) string {
	var out strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return htmlEntities.Replace(out.String())
}

// rtfToText keeps the literal runs of an RTF document. \par and \line
// become newlines, \tab a tab; every other control word is dropped.
func rtfToText(rtf string) string {
	var out strings.Builder
	runes := []rune(rtf)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
		default:
			out.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		if !unicode.IsLetter(next) {
			if next == '\\' || next == '{' || next == '}' {
				out.WriteRune(next)
			}
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsLetter(runes[j]) {
			j++
		}
		word := string(runes[i+1 : j])
		for j < len(runes) && (runes[j] == '-' || unicode.IsDigit(runes[j])) {
			j++
		}
		if j < len(runes) && runes[j] == ' ' {
			j++
		}
		switch word {
		case "par", "line":
			out.WriteRune('\n')
		case "tab":
			out.WriteRune('\t')
		}
		i = j - 1
	}
	return out.String()
}

// cleanClipboardText drops markup and control characters and normalizes
// line endings.
func cleanClipboardText(text string) string {
	switch {
	case looksLikeRTF(text):
		text = rtfToText(text)
	case looksLikeHTML(text):
		text = htmlToText(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
	return strings.TrimSpace(text)
}
