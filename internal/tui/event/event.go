// ABOUTME: Cross-screen messages shared by the TUI pages
// ABOUTME: Lets any page signal credential expiry or surface a notice

package event

// AuthExpiredMsg is sent when the backend rejected the stored
// credential. The root model routes back to the login screen.
type AuthExpiredMsg struct{}

// NoticeMsg carries a transient status line for the footer
type NoticeMsg struct {
	Text    string
	IsError bool
}
