package constants

// InspectionType distinguishes the two inspection submission shapes.
type InspectionType string

const (
	SingleRoom    InspectionType = "single_room"
	WholeBuilding InspectionType = "whole_building"
)

// InspectionTypes lists the accepted values for the inspectionType field.
var InspectionTypes = []string{string(SingleRoom), string(WholeBuilding)}
