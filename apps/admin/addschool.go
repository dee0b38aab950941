package main

import (
	"fmt"

	"github.com/escolaexpress/backend/core/school"
)

func (cli *commandLine) addSchool(name, cnpj, region, address string) error {
	ns := school.NewSchool{
		Name:    name,
		CNPJ:    cnpj,
		Region:  region,
		Address: address,
	}
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}

	sch, err := cli.schoolSvc.Create(ns)
	if err != nil {
		return err
	}
	fmt.Printf("school %q registered with id %s\n", sch.Name, sch.ID)
	return nil
}
