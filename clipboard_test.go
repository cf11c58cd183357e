package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanClipboardText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "  Order placed \n", want: "Order placed"},
		{name: "crlf", in: "one\r\ntwo\rthree", want: "one\ntwo\nthree"},
		{name: "control characters", in: "a\x00b\x1bc\td", want: "abc\td"},
		{name: "html", in: "<div><p>Tom &amp; Jerry</p></div>", want: "Tom & Jerry"},
		{name: "html entities", in: "<span>&lt;tag&gt;&nbsp;&quot;q&quot;</span>", want: "<tag> \"q\""},
		{name: "angle text that is not html", in: "<3 events", want: "<3 events"},
		{name: "rtf", in: `{\rtf1\ansi Hello\par World\tab!}`, want: "Hello\nWorld\t!"},
		{name: "rtf escapes", in: `{\rtf1 a\{b\}c\\d}`, want: `a{b}c\d`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanClipboardText(tt.in))
		})
	}
}
