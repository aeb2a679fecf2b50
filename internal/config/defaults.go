package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.MetadataPath == "" {
		cfg.Data.MetadataPath = "/usr/local/var/erabu/data/meta_Electronics.jsonl"
	}
	if cfg.Data.ReviewsPath == "" {
		cfg.Data.ReviewsPath = "/usr/local/var/erabu/data/Electronics.jsonl"
	}
	if cfg.Data.ProductIndexPath == "" {
		cfg.Data.ProductIndexPath = "/usr/local/var/erabu/data/products_index.jsonl"
	}
	if cfg.Data.ReviewIndexPath == "" {
		cfg.Data.ReviewIndexPath = "/usr/local/var/erabu/data/reviews_index.jsonl"
	}
	if cfg.Data.AggregatedIndexPath == "" {
		cfg.Data.AggregatedIndexPath = "/usr/local/var/erabu/data/aggregated_index.jsonl"
	}
	if cfg.Build.MaxSnippets == 0 {
		cfg.Build.MaxSnippets = 5
	}
	if cfg.Build.ProgressEvery == 0 {
		cfg.Build.ProgressEvery = 1_000_000
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.MaxExplainerProducts == 0 {
		cfg.Retrieval.MaxExplainerProducts = 5
	}
	if cfg.Retrieval.BrowseLimit == 0 {
		cfg.Retrieval.BrowseLimit = 10
	}
	cfg.Classifier.ApplyDefaults()
	cfg.Scoring.ApplyDefaults()
}
