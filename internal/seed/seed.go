// Package seed loads reference data (categories, plans, the admin account)
// from a YAML file. Applying a file twice changes nothing.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"gopkg.in/yaml.v3"
)

type Admin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type File struct {
	Admin      *Admin                    `yaml:"admin"`
	Categories []categories.Input        `yaml:"categories"`
	Plans      []subscriptions.PlanInput `yaml:"plans"`
}

// Parse decodes a seed document. Unknown keys are rejected and ${VAR}
// references in the admin password are expanded from the environment.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if f.Admin != nil {
		f.Admin.Password = os.ExpandEnv(f.Admin.Password)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

type CategoryStore interface {
	EnsureBySlug(ctx context.Context, in categories.Input) (bool, error)
}

type PlanStore interface {
	EnsurePlan(ctx context.Context, in subscriptions.PlanInput) (bool, error)
}

type AdminStore interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

// Report counts the records created by Apply.
type Report struct {
	Categories int
	Plans      int
	Admin      bool
}

func (r Report) String() string {
	return fmt.Sprintf("categories=%d plans=%d admin=%t", r.Categories, r.Plans, r.Admin)
}

func Apply(ctx context.Context, f *File, cats CategoryStore, plans PlanStore, admins AdminStore) (Report, error) {
	var rep Report
	for _, c := range f.Categories {
		created, err := cats.EnsureBySlug(ctx, c)
		if err != nil {
			return rep, fmt.Errorf("category %q: %w", c.Name, err)
		}
		if created {
			rep.Categories++
		}
	}
	for _, p := range f.Plans {
		created, err := plans.EnsurePlan(ctx, p)
		if err != nil {
			return rep, fmt.Errorf("plan %q: %w", p.Name, err)
		}
		if created {
			rep.Plans++
		}
	}
	if f.Admin != nil {
		created, err := admins.EnsureAdmin(ctx, f.Admin.Name, f.Admin.Email, f.Admin.Password)
		if err != nil {
			return rep, fmt.Errorf("admin %s: %w", f.Admin.Email, err)
		}
		rep.Admin = created
	}
	logger.Infof("seed applied: %s", rep)
	return rep, nil
}
