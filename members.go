package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// unknownMemberPriority sorts unmapped members after every configured one.
const unknownMemberPriority = 999

// Member is one entry of the team directory.
type Member struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
}

// MemberDirectory maps workspace identities (emails) to display names and
// sort priorities. It is built once at startup and read-only afterwards.
type MemberDirectory struct {
	byEmail map[string]Member
	byName  map[string]string
}

func NewMemberDirectory(members map[string]Member) *MemberDirectory {
	d := &MemberDirectory{
		byEmail: make(map[string]Member, len(members)),
		byName:  make(map[string]string, len(members)),
	}
	for email, m := range members {
		d.byEmail[email] = m
		if m.Name != "" {
			d.byName[m.Name] = email
		}
	}
	return d
}

// LoadMemberDirectory reads the member directory from a YAML file mapping
// email to {name, priority}.
func LoadMemberDirectory(path string) (*MemberDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}
	var members map[string]Member
	if err := yaml.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("parse members yaml: %w", err)
	}
	return NewMemberDirectory(members), nil
}

// NameOf returns the display name for an email, the raw email when the
// directory has no entry, or "-" for an empty identity.
func (d *MemberDirectory) NameOf(email string) string {
	if email == "" {
		return "-"
	}
	if m, ok := d.byEmail[email]; ok && m.Name != "" {
		return m.Name
	}
	return email
}

// PriorityOf returns the sort priority for an email, or the unknown-member
// sentinel so unmapped members always sort last.
func (d *MemberDirectory) PriorityOf(email string) int {
	if email == "" {
		return unknownMemberPriority
	}
	if m, ok := d.byEmail[email]; ok && m.Priority != 0 {
		return m.Priority
	}
	return unknownMemberPriority
}

// IdentityOf is the reverse lookup: display name to email. Returns the empty
// string when no member carries that name.
func (d *MemberDirectory) IdentityOf(name string) string {
	return d.byName[name]
}

// PriorityOfName resolves a display name to its priority.
func (d *MemberDirectory) PriorityOfName(name string) int {
	return d.PriorityOf(d.IdentityOf(name))
}

// ComparePersons orders two display names by member priority, then name.
func (d *MemberDirectory) ComparePersons(nameA, nameB string) int {
	pa, pb := d.PriorityOfName(nameA), d.PriorityOfName(nameB)
	if pa != pb {
		return pa - pb
	}
	return strings.Compare(nameA, nameB)
}
