package result

// Measurement is one row of a test's measured results
type Measurement struct {
	Head       float64 `json:"Head"`
	Voltage    float64 `json:"Voltage"`
	Current    float64 `json:"Current"`
	T1         float64 `json:"T1"`
	T2         float64 `json:"T2"`
	Time       float64 `json:"Time"`
	Power      float64 `json:"Power"`
	Flowrate   float64 `json:"Flowrate"`
	Efficiency float64 `json:"Efficiency"`
}
