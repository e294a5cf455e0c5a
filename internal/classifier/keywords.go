package classifier

// Domain labels used to file resumes. GeneralVLSI and UnknownDomain are
// sentinels, not scored domains.
const (
	DomainPhysicalDesign     = "Physical Design"
	DomainDesignVerification = "Design Verification"
	DomainDFT                = "DFT"
	DomainRTLDesign          = "RTL Design"
	DomainAnalogDesign       = "Analog Design"
	DomainFPGA               = "FPGA"
	DomainSiliconValidation  = "Silicon Validation"
	DomainMixedSignal        = "Mixed Signal"
	DomainGeneralVLSI        = "General VLSI"
	DomainUnknown            = "Unknown Domain"
)

// Experience bands. Each boundary is inclusive on its upper end.
const (
	LevelFresher     = "Fresher (0-2 years)"
	LevelMidLevel    = "Mid-Level (2-5 years)"
	LevelSenior      = "Senior (5-8 years)"
	LevelExperienced = "Experienced (8+ years)"
	LevelUnknown     = "Unknown"
)

// DomainKeywords holds the weighted keyword sets for one domain. Primary
// keywords carry the higher per-match weight, secondary weight one, and the
// presence of any negative keyword multiplies the domain score down.
type DomainKeywords struct {
	Domain    string
	Primary   []string
	Secondary []string
	Negative  []string
}

func defaultDomainKeywords() []DomainKeywords {
	return []DomainKeywords{
		{
			Domain: DomainPhysicalDesign,
			Primary: []string{
				"physical design", "place and route", "floorplan", "floorplanning",
				"clock tree synthesis", "cts", "static timing analysis", "primetime",
				"innovus", "icc2",
			},
			Secondary: []string{
				"sta", "congestion", "ir drop", "drc", "lvs", "signoff", "eco",
				"def", "lef", "parasitic extraction", "tcl",
			},
			Negative: []string{"uvm", "testbench", "verification plan"},
		},
		{
			Domain: DomainDesignVerification,
			Primary: []string{
				"uvm", "systemverilog", "system verilog", "testbench",
				"functional coverage", "constrained random", "sva", "assertions",
				"verification plan",
			},
			Secondary: []string{
				"verification", "verilog", "questa", "vcs", "regression",
				"scoreboard", "coverage closure", "sequences",
			},
			Negative: []string{"place and route", "floorplan", "clock tree synthesis"},
		},
		{
			Domain: DomainDFT,
			Primary: []string{
				"dft", "scan insertion", "atpg", "mbist", "scan chain",
				"boundary scan", "jtag",
			},
			Secondary: []string{
				"stuck-at", "transition fault", "tessent", "test compression",
				"fault coverage", "lbist",
			},
		},
		{
			Domain: DomainRTLDesign,
			Primary: []string{
				"rtl design", "rtl coding", "microarchitecture", "design compiler",
				"logic design",
			},
			Secondary: []string{
				"verilog", "vhdl", "synthesis", "lint", "cdc", "axi", "ahb",
				"apb", "fsm", "pipelining",
			},
			Negative: []string{"uvm"},
		},
		{
			Domain: DomainAnalogDesign,
			Primary: []string{
				"analog design", "analog layout", "bandgap", "ldo", "opamp",
				"pll design", "adc design", "dac design",
			},
			Secondary: []string{
				"virtuoso", "spectre", "spice", "cmos", "layout", "matching",
				"monte carlo",
			},
			Negative: []string{"uvm", "systemverilog"},
		},
		{
			Domain: DomainFPGA,
			Primary: []string{
				"fpga", "vivado", "quartus", "zynq", "xilinx", "altera",
			},
			Secondary: []string{
				"timing closure", "ip integration", "sdc", "ultrascale",
				"block design", "microblaze",
			},
		},
		{
			Domain: DomainSiliconValidation,
			Primary: []string{
				"silicon validation", "post-silicon", "post silicon",
				"silicon bring-up", "bring-up", "bench testing",
			},
			Secondary: []string{
				"oscilloscope", "lab debug", "characterization", "ate",
				"bench setup", "correlation",
			},
		},
		{
			Domain: DomainMixedSignal,
			Primary: []string{
				"mixed signal", "mixed-signal", "ams verification",
				"analog mixed signal",
			},
			Secondary: []string{
				"serdes", "phy", "behavioral modeling", "real number modeling",
				"wreal",
			},
		},
	}
}

// Resume section categories checked during gatekeeping. A document must hit
// at least SectionsRequired of these to be treated as a resume.
func defaultSectionKeywords() map[string][]string {
	return map[string][]string{
		"contact": {
			"email", "phone", "mobile", "linkedin", "contact",
		},
		"experience": {
			"experience", "work history", "employment", "professional experience",
			"career summary", "worked at",
		},
		"education": {
			"education", "degree", "university", "college", "bachelor", "master",
			"b.tech", "m.tech", "b.e", "m.e",
		},
		"skills": {
			"skills", "technical skills", "competencies", "expertise",
			"tools", "proficient",
		},
	}
}

// Phrases that mark technical documentation rather than resumes. Specs and
// reports share a lot of professional vocabulary with resumes, so three or
// more distinct hits reject the document outright.
func defaultNonResumeIndicators() []string {
	return []string{
		"table of contents",
		"bibliography",
		"references cited",
		"revision history",
		"datasheet",
		"user manual",
		"user guide",
		"installation guide",
		"application note",
		"invoice",
		"purchase order",
		"terms and conditions",
		"all rights reserved",
		"strictly confidential",
		"document version",
		"errata",
	}
}

// Phrases implying zero years of experience when no numeric figure is found.
func defaultFresherPhrases() []string {
	return []string{
		"fresher",
		"fresh graduate",
		"recent graduate",
		"recently graduated",
		"entry level",
		"entry-level",
		"seeking first opportunity",
		"no prior experience",
	}
}
