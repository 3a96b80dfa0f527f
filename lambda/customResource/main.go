package main

import (
	"github.com/m-mizutani/cflogs/pkg/handler"
	"github.com/m-mizutani/cflogs/pkg/provisioner"
)

func main() {
	handler.StartCustomResource(provisioner.Handle)
}
