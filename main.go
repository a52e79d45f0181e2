package main

import "blogengine/service"

func main() {
	service.Execute()
}
