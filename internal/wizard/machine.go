package wizard

// Machine tracks the current step, 1..Total. It only moves one step at a
// time and clamps at both ends instead of failing.
type Machine struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Transition reports what a navigation call did. ScrollTop is set whenever
// the step changed.
type Transition struct {
	From      int    `json:"from"`
	To        int    `json:"to"`
	ScrollTop bool   `json:"scrollTop"`
	Blocked   string `json:"blocked,omitempty"`
}

func NewMachine(total int) Machine {
	if total < 1 {
		total = 1
	}
	return Machine{Current: 1, Total: total}
}

func (m *Machine) Next() Transition {
	from := m.Current
	if m.Current < m.Total {
		m.Current++
	}
	return transition(from, m.Current)
}

func (m *Machine) Previous() Transition {
	from := m.Current
	if m.Current > 1 {
		m.Current--
	}
	return transition(from, m.Current)
}

func (m *Machine) Reset() Transition {
	from := m.Current
	m.Current = 1
	return transition(from, m.Current)
}

func (m Machine) IsFirst() bool { return m.Current <= 1 }
func (m Machine) IsFinal() bool { return m.Current >= m.Total }

func transition(from, to int) Transition {
	return Transition{From: from, To: to, ScrollTop: from != to}
}
