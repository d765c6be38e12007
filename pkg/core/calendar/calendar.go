// Package calendar builds the weekly scheduling grid. It is read-only: a
// grid is a pure function of the week anchor, the entity pool, and the
// filters, and building one never touches shift or assignment state.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/core/recurrence"
)

// FilterAll is the sentinel for an unrestricted filter dimension
const FilterAll = "all"

// Filters narrow the shifts placed on the grid. Dimensions are AND-combined;
// an empty value or FilterAll leaves a dimension unrestricted.
type Filters struct {
	Search      string
	Status      string
	ClientID    string
	ShiftTypeID string
}

// Pool is the entity snapshot a grid is built from
type Pool struct {
	Shifts       []model.Shift
	Assignments  []model.ShiftStaffAssignment
	Clients      []model.Client
	CareServices []model.CareService
}

// Entry is one shift occurrence placed on a calendar day
type Entry struct {
	Shift      model.Shift
	Assignment *model.ShiftStaffAssignment // nil for a vacant occurrence
	Date       time.Time
}

// Grid is the weekly staff-by-day scheduling view. Shifts with no active
// assignment never appear in a staff row; they are surfaced separately by
// Vacant.
type Grid struct {
	WeekStart time.Time
	Days      [7]time.Time
	Staff     []model.Staff
	Cells     map[string][7][]Entry // staff id -> weekday index -> entries
}

// TotalEntries counts every occurrence placed on the grid
func (g *Grid) TotalEntries() int {
	total := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			total += len(cell)
		}
	}
	return total
}

// WeekOf returns Monday 00:00 of the ISO week containing the anchor date
func WeekOf(anchor time.Time) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	// Monday is day zero of the ISO week
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// BuildGrid places every filtered, actively assigned shift occurrence of the
// anchor's ISO week into a {staff x day} grid. Cells are ordered by shift
// start time ascending.
func BuildGrid(anchor time.Time, staff []model.Staff, pool Pool, filters Filters) (*Grid, error) {
	weekStart := WeekOf(anchor)
	weekEnd := weekStart.AddDate(0, 0, 6)

	grid := &Grid{
		WeekStart: weekStart,
		Staff:     staff,
		Cells:     make(map[string][7][]Entry, len(staff)),
	}
	for i := range grid.Days {
		grid.Days[i] = weekStart.AddDate(0, 0, i)
	}

	activeByShift := indexActiveAssignments(pool.Assignments)
	clientNames := indexClientNames(pool.Clients)
	serviceNames := indexServiceNames(pool.CareServices)

	staffIDs := make(map[string]bool, len(staff))
	for _, member := range staff {
		staffIDs[member.ID] = true
	}

	for _, shift := range pool.Shifts {
		if !matches(shift, filters, clientNames, serviceNames) {
			continue
		}
		active, ok := activeByShift[shift.ID]
		if !ok || !staffIDs[active.StaffID] {
			continue
		}

		occurrences, err := recurrence.Expand(shift, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand shift %s: %w", shift.ID, err)
		}

		row := grid.Cells[active.StaffID]
		for _, date := range occurrences {
			day := dayIndex(weekStart, date)
			if day < 0 || day > 6 {
				continue
			}
			assignment := active
			row[day] = append(row[day], Entry{Shift: shift, Assignment: &assignment, Date: date})
		}
		grid.Cells[active.StaffID] = row
	}

	for id, row := range grid.Cells {
		for day := range row {
			sortEntries(row[day])
		}
		grid.Cells[id] = row
	}

	return grid, nil
}

// Vacant returns the week's filtered shift occurrences that have no active
// assignment, ordered by date then start time
func Vacant(anchor time.Time, pool Pool, filters Filters) ([]Entry, error) {
	weekStart := WeekOf(anchor)
	weekEnd := weekStart.AddDate(0, 0, 6)

	activeByShift := indexActiveAssignments(pool.Assignments)
	clientNames := indexClientNames(pool.Clients)
	serviceNames := indexServiceNames(pool.CareServices)

	var entries []Entry
	for _, shift := range pool.Shifts {
		if !matches(shift, filters, clientNames, serviceNames) {
			continue
		}
		if _, assigned := activeByShift[shift.ID]; assigned {
			continue
		}

		occurrences, err := recurrence.Expand(shift, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand shift %s: %w", shift.ID, err)
		}
		for _, date := range occurrences {
			entries = append(entries, Entry{Shift: shift, Date: date})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return before(entries[i], entries[j])
	})
	return entries, nil
}

// matches applies the AND-combined filter set to one shift
func matches(shift model.Shift, f Filters, clientNames, serviceNames map[string]string) bool {
	if !shift.IsActive {
		return false
	}
	if restricted(f.Status) && string(shift.Status) != f.Status {
		return false
	}
	if restricted(f.ClientID) && shift.ClientID != f.ClientID {
		return false
	}
	if restricted(f.ShiftTypeID) && shift.ShiftTypeID != f.ShiftTypeID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		client := strings.ToLower(clientNames[shift.ClientID])
		service := strings.ToLower(serviceNames[shift.CareServiceID])
		if !strings.Contains(client, needle) && !strings.Contains(service, needle) {
			return false
		}
	}
	return true
}

func restricted(value string) bool {
	return value != "" && value != FilterAll
}

// indexActiveAssignments maps each shift to its single active assignment
func indexActiveAssignments(assignments []model.ShiftStaffAssignment) map[string]model.ShiftStaffAssignment {
	active := make(map[string]model.ShiftStaffAssignment)
	for _, a := range assignments {
		if a.Status.IsActive() {
			active[a.ShiftID] = a
		}
	}
	return active
}

func indexClientNames(clients []model.Client) map[string]string {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.FullName()
	}
	return names
}

func indexServiceNames(services []model.CareService) map[string]string {
	names := make(map[string]string, len(services))
	for _, s := range services {
		names[s.ID] = s.Name
	}
	return names
}

// dayIndex locates a date within the week by calendar day, which stays
// correct across DST boundaries where a day is not 24 hours long
func dayIndex(weekStart, date time.Time) int {
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		if day.Year() == date.Year() && day.YearDay() == date.YearDay() {
			return i
		}
	}
	return -1
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return before(entries[i], entries[j]) })
}

// before orders entries by start time of day, then id for determinism
func before(a, b Entry) bool {
	at := timeOfDay(a.Shift.StartTime)
	bt := timeOfDay(b.Shift.StartTime)
	if at != bt {
		return at < bt
	}
	return a.Shift.ID < b.Shift.ID
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
