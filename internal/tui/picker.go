package tui

import (
	"fmt"
	"strings"
)

// accountPicker is the overlay list used to narrow findings to one account.
// Row 0 is "All".
type accountPicker struct {
	accounts []string
	cursor   int
}

func (p *accountPicker) show(current string) {
	p.cursor = 0
	for i, a := range p.accounts {
		if a == current {
			p.cursor = i + 1
		}
	}
}

func (p *accountPicker) move(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor > len(p.accounts) {
		p.cursor = len(p.accounts)
	}
}

// choice returns the account under the cursor, "" for All.
func (p *accountPicker) choice() string {
	if p.cursor == 0 || p.cursor > len(p.accounts) {
		return ""
	}
	return p.accounts[p.cursor-1]
}

func (p *accountPicker) view() string {
	var b strings.Builder
	b.WriteString("Filter by account:\n")
	for i, opt := range append([]string{"All"}, p.accounts...) {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, opt)
	}
	return b.String()
}
