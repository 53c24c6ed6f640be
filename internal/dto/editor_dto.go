package dto

// Inbound websocket frames from the editor. Type is either "edit" or
// "save"; edit frames carry the pane that changed and its full content.
type EditorFrame struct {
	Type    string `json:"type" validate:"required,oneof=edit save"`
	Pane    string `json:"pane,omitempty" validate:"omitempty,oneof=html css js title"`
	Content string `json:"content,omitempty"`
}

// PreviewFrame pushes a freshly composed document to the client.
// Revision is monotonic per editor session; clients drop frames with a
// revision lower than the last one they rendered.
type PreviewFrame struct {
	Type     string `json:"type"`
	Output   string `json:"output"`
	Revision uint64 `json:"revision"`
}

// NoticeFrame surfaces a transient banner (save confirmations, auth
// errors). DurationMs tells the client how long to keep it visible.
type NoticeFrame struct {
	Type       string `json:"type"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
}

// RedirectFrame instructs the client to navigate, used when the session
// drops to unauthenticated mid-connection.
type RedirectFrame struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Replace bool   `json:"replace"`
}

// SavedFrame is fanned out to all of the owner's connected devices when
// a snapshot lands, so device A sees a save made on device B.
type SavedFrame struct {
	Type      string `json:"type"`
	ProjectId string `json:"project_id"`
	Title     string `json:"title"`
}
