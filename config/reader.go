package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	// Driver: file | redis | sqlite
	Driver string      `yaml:"driver"`
	Path   string      `yaml:"path"`
	Redis  RedisConfig `yaml:"redis"`
}

type ConfigSchema struct {
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Data struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"data"`
	Storage  StorageConfig `yaml:"storage"`
	Sessions struct {
		// PersistReader - сохранять ли читательскую сессию в снапшот
		// (по умолчанию сохраняется только админская, как в исходной версии)
		PersistReader bool `yaml:"persist_reader"`
	} `yaml:"sessions"`
	Integrity struct {
		EnforceTagUniqueness bool `yaml:"enforce_tag_uniqueness"`
	} `yaml:"integrity"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var conf ConfigSchema
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return err
	}
	if conf.Storage.Driver == "" {
		conf.Storage.Driver = "file"
	}
	if conf.Storage.Path == "" {
		conf.Storage.Path = "senti-storage.json"
	}
	AppConfig = &conf
	return nil
}
