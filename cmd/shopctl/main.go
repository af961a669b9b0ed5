// cmd/shopctl/main.go
package main

import "github.com/javajoker/orders-backend/cmd/shopctl/commands"

func main() {
	commands.Execute()
}
