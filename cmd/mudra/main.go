// Command mudra trains hand poses from a webcam and recognizes them live.
package main

func main() {
	Execute()
}
