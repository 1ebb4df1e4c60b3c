package dto

// RoutineResponse reports the outcome of one routine invocation.
type RoutineResponse struct {
	Detail    string `json:"detail"`
	Processed int    `json:"processed"`
	Count     int    `json:"count"`
}
