package components

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"notebook/internal/markdown"
	"notebook/internal/notes"
	"github.com/a-h/templ"
)

//go:generate go run notebook/framework/cmd/templgen -path . -base ../../..

const EmptyStateMessage = "Click a note on the left to view something! 🥺"

// Element ids that live routes patch, and the live endpoint of the sidebar.
const (
	NotePaneID      = "note-pane"
	SidebarNotesID  = "sidebar-notes"
	SidebarLivePath = "/sidebar/live"
)

const (
	siteTitle       = "Notebook"
	untitledNote    = "Untitled"
	updatedAtLayout = "2006-01-02 03:04:05"
)

// Sidebar is the note list shown next to every page. Query and ActiveID
// seed the $q and $note datastar signals.
type Sidebar struct {
	Query        string
	ActiveID     string
	SearchAction string
	Items        []SidebarItem
}

// SidebarItem links to a note page. With LiveURL set, a click patches the
// note pane from LiveURL instead of loading the page.
type SidebarItem struct {
	ID           string
	Title        string
	Excerpt      string
	URL          string
	LiveURL      string
	UpdatedLabel string
	Active       bool
}

type sidebarSignalState struct {
	Query string `json:"q"`
	Note  string `json:"note"`
}

func (item SidebarItem) AriaCurrent() string {
	if item.Active {
		return "page"
	}
	return "false"
}

func (s Sidebar) signalsJSON() string {
	return marshalSignals(sidebarSignalState{Query: s.Query, Note: s.ActiveID})
}

func marshalSignals[T interface{}](value T) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}

	return string(payload)
}

func sidebarLiveAction() string {
	return "@get(" + strconv.Quote(SidebarLivePath) + ")"
}

func (item SidebarItem) clickAction() string {
	return "$note = " + strconv.Quote(item.ID) + "; @get(" + strconv.Quote(item.LiveURL) + ")"
}

func (item SidebarItem) ariaCurrentExpr() string {
	return "$note == " + strconv.Quote(item.ID) + " ? 'page' : 'false'"
}

func (s Sidebar) searchAction() string {
	if strings.TrimSpace(s.SearchAction) == "" {
		return "/"
	}
	return s.SearchAction
}

func NoteTitle(note *notes.Note) string {
	if note == nil {
		return untitledNote
	}
	return DisplayTitle(note.Title)
}

func DisplayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return untitledNote
	}
	return title
}

// FormatUpdatedAt renders t as YYYY-MM-DD hh:mm:ss on a 12-hour clock.
func FormatUpdatedAt(t time.Time) string {
	return t.Format(updatedAtLayout)
}

// SidebarTimestamp shows the time of day for notes updated on the same
// calendar day as now, and a short date otherwise.
func SidebarTimestamp(updated time.Time, now time.Time) string {
	updated = updated.In(now.Location())
	uy, um, ud := updated.Date()
	ny, nm, nd := now.Date()
	if uy == ny && um == nm && ud == nd {
		return updated.Format("3:04 PM")
	}
	return updated.Format("1/2/06")
}

func documentTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return siteTitle
	}
	return title + " | " + siteTitle
}

func noteBody(note *notes.Note) templ.Component {
	return templ.Raw(string(markdown.ToHTML(note.Content)))
}

func highlightStyles() templ.Component {
	return templ.Raw("<style>" + string(markdown.ChromaCSS()) + "</style>")
}
