package main

import (
	"context"
	"fmt"

	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
)

// seed loads a demo school with a configured gate, a staff roster, one family
// and some directory content. Meant for local development only.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	sch, err := cli.schoolSvc.Create(school.NewSchool{
		Name:             "Colégio Aurora",
		CNPJ:             "12345678000190",
		Address:          "Rua das Flores, 123",
		Region:           "Centro ⭐",
		ResponsibleName:  "Dona Célia",
		ResponsiblePhone: "11988887777",
	})
	if err != nil {
		return err
	}

	sch, err = cli.schoolSvc.Configure(sch.ID, school.Config{
		Gates: []school.Gate{
			{Name: "Portão Principal"},
			{Name: "Portão Lateral"},
		},
		AvailableGrades: sch.Grades(),
		Staff: []school.Staff{
			{Name: "Seu Jorge"},
			{Name: "Dona Marta"},
		},
	})
	if err != nil {
		return err
	}

	master, _, err := cli.guardianSvc.Register(ctx, guardian.NewGuardian{
		SchoolID:     sch.ID,
		Name:         "Maria Silva",
		NationalID:   "52998224725",
		Relationship: guardian.RelationshipParent,
		Phone:        "11999990000",
		Password:     "123456",
		Students: []guardian.NewStudent{
			{Name: "Ana Silva", Grade: "1º Ano Fundamental", Shift: guardian.ShiftMorning},
			{Name: "João Silva", Grade: "3º Ano Fundamental", Shift: guardian.ShiftAfternoon},
		},
	})
	if err != nil {
		return err
	}

	if _, err = cli.guardianSvc.AddAuthorized(ctx, master, guardian.NewAuthorized{
		Name:         "Carlos Silva",
		Relationship: guardian.RelationshipGrandparent,
		NationalID:   "15350946056",
		Password:     "654321",
	}); err != nil {
		return err
	}

	if _, err = cli.directorySvc.SaveAds([]directory.Ad{
		{PartnerName: "Clube Aquático", Title: "Aulas de Natação", ShortDescription: "Turmas infantis no Centro.", Region: "Centro ⭐", Emoji: "🏊"},
		{PartnerName: "Estuda Mais", Title: "Reforço Escolar", ShortDescription: "Matemática e português.", Region: directory.RegionAll, Emoji: "📚", Featured: true},
	}); err != nil {
		return err
	}
	if _, err = cli.directorySvc.SavePartners([]directory.Partner{
		{Name: "Papelaria Central", CNPJ: "98765432000155", Phone: "1133334444", ContactName: "Sr. Almeida", Region: "Centro ⭐"},
	}); err != nil {
		return err
	}

	fmt.Printf("seeded school %q (%s) with guardians %q and %q\n", sch.Name, sch.ID, "Maria Silva", "Carlos Silva")
	return nil
}
