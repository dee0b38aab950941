package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
	"github.com/escolaexpress/backend/storage/localdb"
)

var guardianRepo guardian.Repository

func setup(t *testing.T) *commandLine {
	conf := &core.Config{}
	conf.Database.Path = filepath.Join(t.TempDir(), "admin_test.db")
	conf.AdminAccessCode = "777777"

	db, err := localdb.Open(conf, nil)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	guardian.InitValidators(validate, translator)

	guardianRepo = localdb.NewGuardianRepository(db)

	return &commandLine{
		conf:         conf,
		db:           db,
		validate:     validate,
		schoolSvc:    school.NewService(localdb.NewSchoolRepository(db)),
		guardianSvc:  guardian.NewService(guardianRepo, nil),
		directorySvc: directory.NewService(localdb.NewDirectoryRepository(db)),
		guardianRepo: guardianRepo,
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_addSchool(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addschool"}, wantErr: errHelp},
		{name: "missing region", args: []string{"addschool", "-name", "Colégio Aurora", "-cnpj", "12345678000190"}, wantErr: errHelp},
		{name: "ok", args: []string{"addschool", "-name", "Colégio Aurora", "-cnpj", "12345678000190", "-region", "Centro ⭐"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("invalid region rejected", func(t *testing.T) {
		err := cli.run([]string{"admin", "addschool", "-name", "Colégio Lunar", "-cnpj", "12345678000190", "-region", "Lua"})
		if _, ok := err.(validator.ValidationErrors); !ok {
			t.Errorf("cli.run() error = %v, want validation errors", err)
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	sch, err := cli.schoolSvc.Create(school.NewSchool{Name: "Colégio Aurora", CNPJ: "12345678000190", Region: "Centro ⭐"})
	if err != nil {
		t.Fatalf("creating school: %v", err)
	}
	master, _, err := cli.guardianSvc.Register(context.Background(), guardian.NewGuardian{
		SchoolID:     sch.ID,
		Name:         "Maria Silva",
		NationalID:   "52998224725",
		Relationship: guardian.RelationshipParent,
		Password:     "123456",
		Students:     []guardian.NewStudent{{Name: "Ana Silva", Grade: "1º Ano Fundamental", Shift: guardian.ShiftMorning}},
	})
	if err != nil {
		t.Fatalf("registering guardian: %v", err)
	}

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "cpf but no password", args: []string{"resetpassword", "-school", sch.ID, "-cpf", master.NationalID}, wantErr: errHelp},
		{name: "guardian not found", args: []string{"resetpassword", "-school", sch.ID, "-cpf", "00000000000"}, extra: extra{pwd: "654321"}, wantErr: guardian.ErrNotFound},
		{name: "wrong school", args: []string{"resetpassword", "-school", "sch-ghost", "-cpf", master.NationalID}, extra: extra{pwd: "654321"}, wantErr: guardian.ErrNotFound},
		{name: "reset ok", args: []string{"resetpassword", "-school", sch.ID, "-cpf", master.NationalID}, extra: extra{pwd: "654321"}},
		{name: "cpf punctuation stripped", args: []string{"resetpassword", "-school", sch.ID, "-cpf", "529.982.247-25"}, extra: extra{pwd: "111222"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}

			gs, err := guardianRepo.QueryGuardiansBySchool(sch.ID)
			if err != nil {
				t.Fatalf("QueryGuardiansBySchool() failed: %v", err)
			}
			var refreshed guardian.Guardian
			for _, g := range gs {
				if g.ID == master.ID {
					refreshed = g
				}
			}
			if refreshed.ID == "" {
				t.Fatal("guardian record lost after reset")
			}
			if err := refreshed.CheckPassword(tt.extra.(extra).pwd); err != nil {
				t.Errorf("new password rejected: %v", err)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	schools, err := cli.schoolSvc.QueryAll()
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(schools) != 1 || schools[0].Name != "Colégio Aurora" {
		t.Errorf("schools = %+v", schools)
	}
	if len(schools[0].Gates) != 2 || len(schools[0].Staff) != 2 {
		t.Errorf("school config = %+v", schools[0])
	}

	gs, err := guardianRepo.QueryGuardiansBySchool(schools[0].ID)
	if err != nil {
		t.Fatalf("QueryGuardiansBySchool() failed: %v", err)
	}
	if len(gs) != 2 {
		t.Errorf("guardians = %+v", gs)
	}

	ads, err := cli.directorySvc.Ads()
	if err != nil {
		t.Fatalf("Ads() failed: %v", err)
	}
	if len(ads) != 2 {
		t.Errorf("ads = %+v", ads)
	}
}

func Test_commandLine_resetAndStats(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	type extra struct {
		code string
	}
	tests := []cliTest{
		{name: "wrong code", args: []string{"reset"}, extra: extra{code: "123456"}},
		{name: "ok", args: []string{"reset"}, extra: extra{code: "777777"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.extra.(extra).code), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.name == "wrong code" {
				if err == nil {
					t.Error("cli.run() accepted a wrong access code")
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() error = %v", err)
			}
			schools, err := cli.schoolSvc.QueryAll()
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(schools) != 0 {
				t.Errorf("schools survived reset: %+v", schools)
			}
		})
	}

	t.Run("stats", func(t *testing.T) {
		if err := cli.run([]string{"admin", "stats"}); err != nil {
			t.Errorf("cli.run() error = %v", err)
		}
	})
}
