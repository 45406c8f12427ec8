package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
)

const SearchOwner = "search"

type SearchMode struct {
	*TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(SearchOwner, "Search movies and series", ti),
	}
}
