package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleFormatPrompt() {
	fmt.Println(FormatPrompt("/home/ada/src/lishp", "/home/ada", "〉"))
	fmt.Println(FormatPrompt("/home/ada", "/home/ada", "%"))
	fmt.Println(FormatPrompt("/tmp", "/home/ada", ""))

	// Output: ~/src/lishp〉
	// ~%
	// /tmp〉
}

func TestAbbreviateHome(t *testing.T) {
	cases := []struct {
		path     string
		home     string
		expected string
	}{
		{"/home/ada", "/home/ada", "~"},
		{"/home/ada/x", "/home/ada", "~/x"},
		{"/home/ada/x", "/home/ada/", "~/x"},
		{"/home/adam", "/home/ada", "/home/adam"},
		{"/srv/home/ada", "/home/ada", "/srv/home/ada"},
		{"/home/ada", "", "/home/ada"},
	}

	for _, tc := range cases {
		t.Run(tc.path+"|"+tc.home, func(t *testing.T) {
			assert.Equal(t, tc.expected, AbbreviateHome(tc.path, tc.home))
		})
	}
}
