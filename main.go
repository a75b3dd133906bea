package main

import "github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/cmd"

func main() {
	cmd.Execute()
}
