package lifecycle

// Cost model: a flat per-node hourly rate by machine type plus the managed
// control-plane fee. This is a rough floor for operator decisions, not a
// billing-accurate figure (no partial hours, discounts or regional
// variation).
const (
	// ControlPlaneHourlyUSD is the managed control-plane fee, billed even
	// at zero nodes.
	ControlPlaneHourlyUSD = 0.10

	// DefaultNodeHourlyUSD is used for machine types missing from the
	// rate table.
	DefaultNodeHourlyUSD = 0.15

	hoursPerDay  = 24
	daysPerMonth = 30
)

// nodeHourlyUSD maps machine types to approximate on-demand hourly rates.
var nodeHourlyUSD = map[string]float64{
	"e2-micro":       0.008,
	"e2-small":       0.017,
	"e2-medium":      0.034,
	"e2-standard-2":  0.067,
	"e2-standard-4":  0.134,
	"e2-standard-8":  0.268,
	"n1-standard-1":  0.048,
	"n1-standard-2":  0.095,
	"n1-standard-4":  0.190,
	"n2-standard-2":  0.097,
	"n2-standard-4":  0.194,
	"c2-standard-4":  0.209,
	"t2d-standard-4": 0.169,
}

// Estimate is a point-in-time cost projection for a cluster.
type Estimate struct {
	NodeCount   int     `json:"nodeCount"`
	MachineType string  `json:"machineType"`
	NodeHourly  float64 `json:"nodeHourly"`
	Hourly      float64 `json:"hourly"`
	Daily       float64 `json:"daily"`
	Monthly     float64 `json:"monthly"`
}

// NodeRate returns the hourly rate for a machine type, falling back to
// DefaultNodeHourlyUSD for unknown types.
func NodeRate(machineType string) float64 {
	if rate, ok := nodeHourlyUSD[machineType]; ok {
		return rate
	}
	return DefaultNodeHourlyUSD
}

// EstimateCost computes the fixed-formula estimate for a node count and
// machine type.
func EstimateCost(nodeCount int, machineType string) Estimate {
	rate := NodeRate(machineType)
	hourly := float64(nodeCount)*rate + ControlPlaneHourlyUSD
	daily := hourly * hoursPerDay

	return Estimate{
		NodeCount:   nodeCount,
		MachineType: machineType,
		NodeHourly:  rate,
		Hourly:      hourly,
		Daily:       daily,
		Monthly:     daily * daysPerMonth,
	}
}
