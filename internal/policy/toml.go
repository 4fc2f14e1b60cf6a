package policy

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadTables reads a rule table set from a TOML file and overlays it on
// the defaults: any section present in the file replaces the built-in
// one wholesale, absent sections keep their defaults.
//
// File shape:
//
//	broken = ["MD5", "RC4"]
//	fips_approved = ["AES"]
//	pci_approved = ["AES"]
//
//	[[weak]]
//	name = "MD5"
//	score = 0.0
//
//	[[strong]]
//	name = "AES"
//	score = 10.0
func LoadTables(path string) (Tables, error) {
	var file Tables
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Tables{}, fmt.Errorf("policy tables %s: %w", path, err)
	}

	tables := DefaultTables()
	if file.Weak != nil {
		tables.Weak = file.Weak
	}
	if file.Strong != nil {
		tables.Strong = file.Strong
	}
	if file.Broken != nil {
		tables.Broken = file.Broken
	}
	if file.FIPSApproved != nil {
		tables.FIPSApproved = file.FIPSApproved
	}
	if file.PCIApproved != nil {
		tables.PCIApproved = file.PCIApproved
	}
	return tables, nil
}
