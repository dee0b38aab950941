package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
	logsvc "github.com/escolaexpress/backend/services/logger"
	"github.com/escolaexpress/backend/storage/localdb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := localdb.Open(conf, logsvc.NewStdLogger(logger))
	errAndDie(err)
	defer db.Close()

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	guardian.InitValidators(validate, translator)

	guardianRepo := localdb.NewGuardianRepository(db)

	// start CLI
	cli := commandLine{
		conf:         conf,
		db:           db,
		validate:     validate,
		schoolSvc:    school.NewService(localdb.NewSchoolRepository(db)),
		guardianSvc:  guardian.NewService(guardianRepo, nil),
		directorySvc: directory.NewService(localdb.NewDirectoryRepository(db)),
		guardianRepo: guardianRepo,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
