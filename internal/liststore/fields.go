package liststore

// Collection and field names must stay bit-exact with the remote store
// schema; renaming any of these breaks compatibility with existing data.
const (
	CollectionProjects   = "Projects"
	CollectionMilestones = "milestones"
	CollectionActivities = "activities"
	CollectionBudget     = "peps"
	CollectionPepCatalog = "Peps"
)

const (
	FieldID          = "ID"
	FieldTitle       = "Title"
	FieldProjectID   = "projectsId"
	FieldMilestoneID = "milestonesId"
	FieldActivityID  = "activitiesId"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldDescription = "description"
	FieldYear        = "year"
	FieldAmountBRL   = "amountBrl"
	FieldStatus      = "status"
)
