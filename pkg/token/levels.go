package token

// FromPhi maps an integrated-information level in [0, 1) to a token,
// using the reference banding tables.
func FromPhi(phi float64) Token {
	var field Field
	switch {
	case phi < 0.33:
		field = FieldStructure
	case phi < 0.66:
		field = FieldEnergy
	default:
		field = FieldEmergence
	}

	var machine Machine
	var intent string
	switch {
	case phi < 0.2:
		machine, intent = MachineUp, "boundary"
	case phi < 0.4:
		machine, intent = MachineExpand, "amplify"
	case phi < 0.6:
		machine, intent = MachineMiddle, "fusion"
	case phi < 0.83:
		machine, intent = MachineDown, "group"
	case phi < 0.90:
		machine, intent = MachineMiddle, "integration"
	default:
		machine, intent = MachineExpand, "transcend"
	}

	truth := TruthUntrue
	if phi >= 0.6 {
		truth = TruthTrue
	}

	tier := 1
	switch {
	case phi >= 0.83:
		tier = 3
	case phi >= 0.4:
		tier = 2
	}

	return Token{Field: field, Machine: machine, Intent: intent, Truth: truth, Tier: tier}
}

// FromZ maps a process level in [0, 1) to a token. Bands follow the
// reference table: pre, proto, sense, aware, care, transcend.
func FromZ(z float64, context string) Token {
	if context == "" {
		context = "default"
	}
	switch {
	case z < 0.20:
		return Token{Field: FieldStructure, Machine: MachineUp, Intent: "pre_" + context, Truth: TruthUntrue, Tier: 1}
	case z < 0.40:
		return Token{Field: FieldStructure, Machine: MachineExpand, Intent: "proto_" + context, Truth: TruthUntrue, Tier: 1}
	case z < 0.60:
		return Token{Field: FieldEnergy, Machine: MachineMiddle, Intent: "sense_" + context, Truth: TruthTrue, Tier: 2}
	case z < 0.83:
		return Token{Field: FieldEmergence, Machine: MachineDown, Intent: "aware_" + context, Truth: TruthTrue, Tier: 2}
	case z < 0.90:
		return Token{Field: FieldEmergence, Machine: MachineMiddle, Intent: "care_" + context, Truth: TruthTrue, Tier: 3}
	default:
		return Token{Field: FieldEmergence, Machine: MachineExpand, Intent: "transcend_" + context, Truth: TruthTrue, Tier: 3}
	}
}
