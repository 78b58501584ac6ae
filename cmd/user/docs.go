package main

// @title Pokedex User Service API
// @version 1.0
// @description User registration, authentication and profile access

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
