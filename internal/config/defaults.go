package config

func defaultConfig() Config {
	return Config{
		Core: Core{
			TrashDir: "",
			Verbose:  false,
		},
		Listing: Listing{
			Sort:          "name",
			Reverse:       false,
			DirsFirst:     false,
			CaseSensitive: false,
			Unicode:       false,
			ShowHidden:    false,
			LightMode:     false,
		},
		Filter: Filter{
			Include: IncludeConfig{
				Period: 0,
			},
			Exclude: ExcludeConfig{
				Files: []string{},
				Globs: []string{},
				Patterns: []string{},
				Size: SizeConfig{
					Min: "",
					Max: "",
				},
			},
		},
	}
}
