package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
	"github.com/escolaexpress/backend/storage/localdb"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf         *core.Config
	db           *localdb.DB
	validate     *validator.Validate
	schoolSvc    *school.Service
	guardianSvc  *guardian.Service
	directorySvc *directory.Service
	guardianRepo guardian.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addschool -name NAME -cnpj CNPJ -region REGION [-address ADDRESS] - register a school")
	fmt.Println("  resetpassword -school SCHOOL_ID -cpf CPF - reset a guardian's password")
	fmt.Println("  seed - load a demo school with sample guardians and directory content")
	fmt.Println("  reset - wipe every stored collection (access code prompted)")
	fmt.Println("  stats - print record counts per collection")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ExitOnError)
	addSchoolName := addSchoolCmd.String("name", "", "The school's display name.")
	addSchoolCNPJ := addSchoolCmd.String("cnpj", "", "The school's CNPJ registration number.")
	addSchoolRegion := addSchoolCmd.String("region", "", "The advertising region the school belongs to.")
	addSchoolAddress := addSchoolCmd.String("address", "", "The school's street address.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordSchool := resetPasswordCmd.String("school", "", "The guardian's school id.")
	resetPasswordCPF := resetPasswordCmd.String("cpf", "", "The guardian's CPF. The new password will be prompted next.")

	switch args[1] {
	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSchoolName == "" || *addSchoolCNPJ == "" || *addSchoolRegion == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		return cli.addSchool(*addSchoolName, *addSchoolCNPJ, *addSchoolRegion, *addSchoolAddress)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordSchool == "" || *resetPasswordCPF == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter new password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordSchool, *resetPasswordCPF, string(pwd))
	case "seed":
		return cli.seed()
	case "reset":
		fmt.Print("Enter admin access code:")
		code, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		return cli.reset(string(code))
	case "stats":
		return cli.stats()
	default:
		cli.printUsage()
		return errHelp
	}
}
