package loader

// Presentation describes the overlay a status calls for.
type Presentation struct {
	Modal       bool
	Title       string
	Label       string
	Busy        bool
	Dismissable bool
	Action      string // label of the dismiss action
}

// Present maps a status to its overlay. Statuses the caller resolves by
// dropping the Loader get no modal.
func Present(s Status) Presentation {
	switch s.Kind {
	case Parsing:
		return Presentation{Modal: true, Title: "Open File", Label: "Parse file..."}
	case FetchingKeychains:
		return Presentation{Modal: true, Title: "Open File", Label: "Fetching Keychains...", Busy: true}
	case Error:
		return Presentation{Modal: true, Title: "Error", Label: s.Message, Dismissable: true, Action: "Close"}
	default:
		return Presentation{}
	}
}
