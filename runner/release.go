package runner

// releaseStack holds release functions for acquired handles. Handles are
// released in reverse order of acquisition.
type releaseStack struct {
	entries []releaseEntry
	// onRelease, when set, is called with each name as it is released
	onRelease func(name string)
}

type releaseEntry struct {
	name    string
	release func()
}

func (rs *releaseStack) push(name string, release func()) {
	rs.entries = append(rs.entries, releaseEntry{name: name, release: release})
}

// releaseAll runs every pending release function, newest first, and returns
// the names in the order they were released. The stack is empty afterwards.
func (rs *releaseStack) releaseAll() []string {
	released := make([]string, 0, len(rs.entries))
	for i := len(rs.entries) - 1; i >= 0; i-- {
		rs.entries[i].release()
		released = append(released, rs.entries[i].name)
		if rs.onRelease != nil {
			rs.onRelease(rs.entries[i].name)
		}
	}
	rs.entries = nil
	return released
}

func (rs *releaseStack) len() int {
	return len(rs.entries)
}
