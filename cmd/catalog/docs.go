package main

// @title Pokedex Catalog Service API
// @version 1.0
// @description Catalog browsing, favorites and votes for the 151-entry pokemon catalog

// @contact.name API Support

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
