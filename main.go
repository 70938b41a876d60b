/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main - enigma is a rotor machine in the manner of the historical
// Enigma: a chain of keyed rotors and a reflector, loaded from a rotor bank
// file, that turns base64 text into base64 text and back.
package main

import "github.com/bgallie/enigma/cmd"

func main() {
	cmd.Execute()
}
