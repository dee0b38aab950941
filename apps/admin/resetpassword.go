package main

import (
	"fmt"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
)

// resetPassword replaces a guardian's password hash. The store keeps whole
// profiles, so the record is swapped out rather than patched.
func (cli *commandLine) resetPassword(schoolID, cpf, pwd string) error {
	cpf = core.StripNonDigits(cpf)

	gs, err := cli.guardianRepo.QueryGuardiansBySchool(schoolID)
	if err != nil {
		return err
	}
	for _, g := range gs {
		if g.NationalID != cpf {
			continue
		}
		if err := g.SetPassword(pwd); err != nil {
			return err
		}
		if err := cli.guardianRepo.DeleteGuardianByID(g.ID); err != nil {
			return err
		}
		if _, err := cli.guardianRepo.AppendGuardian(g); err != nil {
			return err
		}
		fmt.Printf("password reset for %s\n", g.Name)
		return nil
	}
	return guardian.ErrNotFound
}
