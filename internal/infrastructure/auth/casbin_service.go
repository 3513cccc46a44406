package auth

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// DefaultModel is used when no model file is present on disk.
// Objects match with keyMatch2 so "/assets/*" covers nested paths; actions are regexes.
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService loads the model from modelPath (or DefaultModel) and policies from db
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E: e}, nil
}

func loadModel(path string) (model.Model, error) {
	if path != "" {
		_, err := os.Stat(path)
		if err == nil {
			return model.NewModelFromFile(path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		slog.Warn("casbin model file not found, using built-in model", "path", path)
	}
	return model.NewModelFromString(DefaultModel)
}
