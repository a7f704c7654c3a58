package core

import "fpadmin/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewCenterCountRule())
	engine.Register(NewUniqueCodesRule())
	return engine
}
