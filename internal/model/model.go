package model

// Task is a single to-do entry. Position in the list is its address for
// mutations; ID is carried so retained views can re-resolve the position.
type Task struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Selected  bool   `json:"selected" yaml:"selected"`
}

type Counters struct {
	Deleted int `json:"deletedCount" yaml:"deletedCount"`
	Edited  int `json:"editedCount" yaml:"editedCount"`
}

// Row is one rendered line of the list.
type Row struct {
	Index     int    `json:"index" yaml:"index"`
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Selected  bool   `json:"selected" yaml:"selected"`
}

// View is the full projection of list state handed to a renderer.
type View struct {
	Rows      []Row `json:"rows" yaml:"rows"`
	Total     int   `json:"totalCount" yaml:"totalCount"`
	Completed int   `json:"completedCount" yaml:"completedCount"`
	Deleted   int   `json:"deletedCount" yaml:"deletedCount"`
	Edited    int   `json:"editedCount" yaml:"editedCount"`
}

// CloneTasks returns an independent copy of ts (never nil).
func CloneTasks(ts []Task) []Task {
	out := make([]Task, len(ts))
	copy(out, ts)
	return out
}
