package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ppiankov/notallowed/internal/denylist"
)

// categoryFlags selects the categories a command checks
type categoryFlags struct {
	word        bool
	username    bool
	email       bool
	ip          bool
	bankAccount bool
}

func (f *categoryFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.word, "word", false, "check the banned words and phrases list")
	fs.BoolVar(&f.username, "username", false, "check the banned usernames list")
	fs.BoolVar(&f.email, "email", false, "check the banned emails list")
	fs.BoolVar(&f.ip, "ip", false, "check the banned IPs list")
	fs.BoolVar(&f.bankAccount, "bank-account", false, "check the banned bank accounts list")
}

// selected returns the chosen categories; none chosen means all of them
func (f *categoryFlags) selected() []denylist.Category {
	var out []denylist.Category
	if f.word {
		out = append(out, denylist.Word)
	}
	if f.username {
		out = append(out, denylist.Username)
	}
	if f.email {
		out = append(out, denylist.Email)
	}
	if f.ip {
		out = append(out, denylist.IP)
	}
	if f.bankAccount {
		out = append(out, denylist.BankAccount)
	}
	if len(out) == 0 {
		return denylist.AllCategories()
	}
	return out
}

// extensionFlags add runtime entries before checking
type extensionFlags struct {
	add   []string
	merge []string
}

func (f *extensionFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.add, "add", nil, "add an entry for this run, as category=value (repeatable)")
	fs.StringArrayVar(&f.merge, "merge", nil, "merge a list file for this run, as category=path (repeatable)")
}

// apply merges the requested entries and files into r
func (f *extensionFlags) apply(r *denylist.Registry) error {
	for _, kv := range f.add {
		name, value, err := splitPair(kv)
		if err != nil {
			return fmt.Errorf("--add: %w", err)
		}
		if err := r.MergeNamed(name, value); err != nil {
			return fmt.Errorf("--add %s: %w", kv, err)
		}
	}

	for _, kv := range f.merge {
		name, path, err := splitPair(kv)
		if err != nil {
			return fmt.Errorf("--merge: %w", err)
		}
		c, err := denylist.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("--merge %s: %w", kv, err)
		}
		if err := r.MergeFile(c, path); err != nil {
			return fmt.Errorf("--merge %s: %w", kv, err)
		}
	}

	return nil
}

func splitPair(kv string) (string, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf("expected category=value, got %q", kv)
	}
	return name, value, nil
}
