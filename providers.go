package main

// Provider prototypes self-register on import.
import (
	_ "github.com/coursexpert/coursexpert/pkg/providers/coursera"
	_ "github.com/coursexpert/coursexpert/pkg/providers/nptel"
	_ "github.com/coursexpert/coursexpert/pkg/providers/udemy"
)
