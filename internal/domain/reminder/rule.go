// internal/domain/reminder/rule.go
package reminder

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidDay = errors.New("reminder day must be between 1 and 31")
var ErrEmptyMessage = errors.New("reminder message is empty")
var ErrDuplicateDay = errors.New("reminder day is defined more than once")

const (
	// EarlyReminderDay is when the upcoming invoice deadline is announced.
	EarlyReminderDay = 9
	// DeadlineDay is the last day invoices are accepted.
	DeadlineDay = 12

	EarlyReminderMessage = "📢 Recordatorio: El día 12 es la fecha límite para enviar las facturas de este mes. ¡No lo olvides! 📢 Ten en cuenta que el día 12 es el último día para enviar las facturas de este mes."
	DeadlineMessage      = "🚨 ¡ÚLTIMO DÍA! Hoy es la fecha límite para enviar las facturas de este mes. Si no las envías hoy, no se procesarán los pagos 🚨"
)

// Rule associates a day of the month with the message posted on that day.
type Rule struct {
	Day     int
	Message string
}

// RuleSet is an immutable day -> message lookup table.
type RuleSet struct {
	byDay map[int]string
}

// NewRuleSet validates rules and builds the lookup table.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	byDay := make(map[int]string, len(rules))
	for _, r := range rules {
		if r.Day < 1 || r.Day > 31 {
			return nil, fmt.Errorf("day %d: %w", r.Day, ErrInvalidDay)
		}
		if r.Message == "" {
			return nil, fmt.Errorf("day %d: %w", r.Day, ErrEmptyMessage)
		}
		if _, exists := byDay[r.Day]; exists {
			return nil, fmt.Errorf("day %d: %w", r.Day, ErrDuplicateDay)
		}
		byDay[r.Day] = r.Message
	}
	return &RuleSet{byDay: byDay}, nil
}

// DefaultRuleSet returns the invoice deadline reminders (day 9 and day 12).
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(
		Rule{Day: EarlyReminderDay, Message: EarlyReminderMessage},
		Rule{Day: DeadlineDay, Message: DeadlineMessage},
	)
	if err != nil {
		panic(err) // literals above are valid
	}
	return rs
}

// Lookup returns the message for day, or false when nothing is due.
func (rs *RuleSet) Lookup(day int) (string, bool) {
	msg, ok := rs.byDay[day]
	return msg, ok
}

// Rules returns a copy of the rules ordered by day.
func (rs *RuleSet) Rules() []Rule {
	rules := make([]Rule, 0, len(rs.byDay))
	for day, msg := range rs.byDay {
		rules = append(rules, Rule{Day: day, Message: msg})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Day < rules[j].Day })
	return rules
}

func (rs *RuleSet) Days() []int {
	days := make([]int, 0, len(rs.byDay))
	for _, r := range rs.Rules() {
		days = append(days, r.Day)
	}
	return days
}
