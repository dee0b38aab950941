package directory

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type (
	// Repository stores the platform-wide reference collections. Saves are
	// whole-collection overwrites, matching how the admin portal edits them.
	Repository interface {
		QueryAllAds() ([]Ad, error)
		SaveAds(ads []Ad) error
		QueryAllPartners() ([]Partner, error)
		SavePartners(partners []Partner) error
		QueryAllSecurityTips() ([]SecurityTip, error)
		SaveSecurityTips(tips []SecurityTip) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AdsFor returns the ads visible in a school's region.
func (svc *Service) AdsFor(region string) ([]Ad, error) {
	ads, err := svc.repo.QueryAllAds()
	if err != nil {
		return nil, errors.Wrap(err, "querying ads")
	}
	return AdsForRegion(ads, region), nil
}

func (svc *Service) Ads() ([]Ad, error) {
	return svc.repo.QueryAllAds()
}

func (svc *Service) SaveAds(ads []Ad) ([]Ad, error) {
	for i := range ads {
		if ads[i].ID == "" {
			ads[i].ID = uuid.New().String()
		}
	}
	if err := svc.repo.SaveAds(ads); err != nil {
		return nil, errors.Wrap(err, "saving ads")
	}
	return ads, nil
}

func (svc *Service) Partners() ([]Partner, error) {
	return svc.repo.QueryAllPartners()
}

func (svc *Service) SavePartners(partners []Partner) ([]Partner, error) {
	for i := range partners {
		if partners[i].ID == "" {
			partners[i].ID = uuid.New().String()
		}
	}
	if err := svc.repo.SavePartners(partners); err != nil {
		return nil, errors.Wrap(err, "saving partners")
	}
	return partners, nil
}

// SecurityTips returns the curated tips, or DefaultSecurityTips when none
// have been saved yet.
func (svc *Service) SecurityTips() ([]SecurityTip, error) {
	tips, err := svc.repo.QueryAllSecurityTips()
	if err != nil {
		return nil, errors.Wrap(err, "querying security tips")
	}
	if len(tips) == 0 {
		return DefaultSecurityTips, nil
	}
	return tips, nil
}

func (svc *Service) SaveSecurityTips(tips []SecurityTip) ([]SecurityTip, error) {
	for i := range tips {
		if tips[i].ID == "" {
			tips[i].ID = uuid.New().String()
		}
	}
	if err := svc.repo.SaveSecurityTips(tips); err != nil {
		return nil, errors.Wrap(err, "saving security tips")
	}
	return tips, nil
}
