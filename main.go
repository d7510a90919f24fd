/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/rbxlink/roblox-user-services/cmd"

func main() {
	cmd.Execute()
}
