package main

import (
	"crypto/subtle"
	"fmt"
)

func (cli *commandLine) reset(code string) error {
	want := cli.conf.AdminAccessCode
	if want == "" || subtle.ConstantTimeCompare([]byte(code), []byte(want)) != 1 {
		return fmt.Errorf("invalid access code")
	}
	if err := cli.db.Reset(); err != nil {
		return err
	}
	fmt.Println("all collections cleared")
	return nil
}

func (cli *commandLine) stats() error {
	for _, key := range cli.db.Keys() {
		fmt.Printf("%-20s %d\n", key, cli.db.Count(key))
	}
	return nil
}
