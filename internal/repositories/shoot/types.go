package shoot

import "github.com/archerylive/shootlive/internal/models"

type SaveShootInput struct {
	Shoot *models.Shoot
}

type GetShootByCodeInput struct {
	Code string
}

type GetShootsByCodesInput struct {
	Codes []string
}

type GetShootsByCodesOutput struct {
	Shoots map[string]*models.Shoot
}

type DeleteShootInput struct {
	Code string
}

type CodeExistsInput struct {
	Code string
}
