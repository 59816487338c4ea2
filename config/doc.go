// Package config loads sylph client configuration with Viper.
//
// A client named "todos" reads todos.yml (or config.yml) from the search
// paths, then .env.todos or .env through godotenv, then TODOS_* environment
// variables:
//
//	var cfg sylph.Config
//	err := config.Load("todos", &cfg, config.WithConfigFile("./todos.yml"))
package config
