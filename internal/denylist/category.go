package denylist

import (
	"fmt"
	"strings"
)

// Category identifies one denylist.
type Category uint8

const (
	// Username is the banned usernames list.
	Username Category = iota
	// Email is the banned emails and email domains list.
	Email
	// Word is the banned words and phrases list.
	Word
	// BankAccount is the banned bank account numbers list.
	BankAccount
	// IP is the banned IP addresses list.
	IP
)

// Strategy is the comparison rule a category applies.
type Strategy uint8

const (
	// Exact matches the whole folded value.
	Exact Strategy = iota
	// EmailDomain matches the "@domain" part or the whole folded value.
	EmailDomain
	// Contains matches any entry found inside the folded value.
	Contains
)

type categoryInfo struct {
	name     string
	singular string
	strategy Strategy
}

var categories = [...]categoryInfo{
	Username:    {name: "usernames", singular: "username", strategy: Exact},
	Email:       {name: "emails", singular: "email", strategy: EmailDomain},
	Word:        {name: "words", singular: "word", strategy: Contains},
	BankAccount: {name: "bank_accounts", singular: "bank_account", strategy: Exact},
	IP:          {name: "ips", singular: "ip", strategy: Exact},
}

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	return []Category{Username, Email, Word, BankAccount, IP}
}

// ParseCategory resolves a plural or singular category name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	for i, info := range categories {
		if key == info.name || key == info.singular {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCategory, name)
}

// String returns the list name, e.g. "usernames".
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categories[c].name
}

// FileName returns the default list file name for the category.
func (c Category) FileName() string {
	return c.String() + ".txt"
}

// Strategy returns the comparison rule of the category.
func (c Category) Strategy() Strategy {
	return categories[c].strategy
}

func (c Category) valid() bool {
	return int(c) < len(categories)
}
