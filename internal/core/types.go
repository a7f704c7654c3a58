package core

import "fpadmin/pkg/domain"

type (
	Network            = domain.Network
	Center             = domain.Center
	ProfessionalFamily = domain.ProfessionalFamily
	Department         = domain.Department
	Objective          = domain.Objective
	Role               = domain.Role
	Permission         = domain.Permission
	Change             = domain.Change
	Result             = domain.Result
	Violation          = domain.Violation
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
	MeetingConfig      = domain.MeetingConfig
	BrandingConfig     = domain.BrandingConfig
	EmailConfig        = domain.EmailConfig
)
