package labtest

// Test is one device test run. JSON names follow the table columns the
// front-end reads.
type Test struct {
	ID           int64  `json:"Test_Id"`
	Product      string `json:"Product"`
	DeviceID     string `json:"Device_Id"`
	BoardVersion string `json:"Board_Version"`
	Firmware     string `json:"Firmware"`
	Profile      string `json:"Profile"`
	TestEngineer string `json:"Test_Engineer"`
	PowerSource  string `json:"Power_Source"`
	PumpType     string `json:"Pump_Type"`
	PumpID       string `json:"Pump_Id"`
}
