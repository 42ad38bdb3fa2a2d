package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"invoice_reminder_bot/internal/domain/reminder"

	"github.com/robfig/cron/v3"
)

var ErrInvalidDailySpec = errors.New("invalid daily cron spec")

// Calendar maps reminder rules onto the daily run of the external scheduler.
// It never runs jobs; it only reports when each rule will fire.
type Calendar struct {
	rules     []reminder.Rule
	schedules []cron.Schedule
	specs     []string
	location  *time.Location
}

// FireTime is one upcoming run that will post a reminder.
type FireTime struct {
	At  time.Time
	Day int
}

// NewCalendar derives one cron spec per rule from dailySpec by pinning its
// day-of-month field, e.g. "0 10 * * *" becomes "0 10 9 * *" for day 9.
func NewCalendar(rules *reminder.RuleSet, dailySpec string, location *time.Location) (*Calendar, error) {
	if location == nil {
		location = time.Local
	}
	fields := strings.Fields(dailySpec)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: %q must have 5 fields", ErrInvalidDailySpec, dailySpec)
	}
	// cron ORs day-of-month with a restricted day-of-week, so both must be open.
	if fields[2] != "*" || fields[4] != "*" {
		return nil, fmt.Errorf("%w: %q must run every day", ErrInvalidDailySpec, dailySpec)
	}
	if _, err := cron.ParseStandard(dailySpec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDailySpec, err)
	}

	c := &Calendar{rules: rules.Rules(), location: location}
	for _, r := range c.rules {
		fields[2] = strconv.Itoa(r.Day)
		spec := strings.Join(fields, " ")
		sched, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d: %w", ErrInvalidDailySpec, r.Day, err)
		}
		c.specs = append(c.specs, spec)
		c.schedules = append(c.schedules, sched)
	}
	return c, nil
}

// Crontab returns the derived spec for day, or false if no rule covers it.
func (c *Calendar) Crontab(day int) (string, bool) {
	for i, r := range c.rules {
		if r.Day == day {
			return c.specs[i], true
		}
	}
	return "", false
}

// Next returns the next count fire times after from, in ascending order.
// Months lacking a rule's day are skipped.
func (c *Calendar) Next(from time.Time, count int) []FireTime {
	if count <= 0 || len(c.schedules) == 0 {
		return nil
	}
	from = from.In(c.location)

	// Each rule fires at most once a month, so count runs per rule always cover
	// the first count overall.
	var all []FireTime
	for i, sched := range c.schedules {
		t := from
		for n := 0; n < count; n++ {
			t = sched.Next(t)
			if t.IsZero() {
				break
			}
			all = append(all, FireTime{At: t, Day: c.rules[i].Day})
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].At.Before(all[j].At) })
	if len(all) > count {
		all = all[:count]
	}
	return all
}
