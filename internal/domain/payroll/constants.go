package payroll

const (
	// CsgCrdsRatio is the share of gross pay CSG and CRDS are levied on.
	CsgCrdsRatio = 0.9825

	Overtime25Multiplier = 1.25
	Overtime50Multiplier = 1.50

	DefaultPMSSCeiling = 3666.00
	DefaultHoursWorked = 151.67
	DefaultHourlyRate  = 11.00

	GroupEmployee = "employee"
	GroupEmployer = "employer"
)

const (
	NameMaladie                  = "Maladie"
	NameVieillessePlafonnee      = "Vieillesse plafonnée"
	NameVieillesseDeplafonnee    = "Vieillesse déplafonnée"
	NameChomage                  = "Chômage"
	NameRetraiteComplementaire   = "Retraite complémentaire"
	NamePrevoyance               = "Prévoyance"
	NameCSGDeductible            = "CSG déductible"
	NameCSGNonDeductible         = "CSG non déductible"
	NameCRDS                     = "CRDS"
	NameAllocationsFamiliales    = "Allocations familiales"
	NameATMP                     = "AT/MP"
	NameAGS                      = "AGS"
	NameFormationProfessionnelle = "Formation professionnelle"
	NameTaxeApprentissage        = "Taxe d'apprentissage"
	NameFNAL                     = "FNAL"
)
