// Copyright 2018 SumUp Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decrypter

// Decrypter is an interface describing any type of secret decrypter which
// given the ciphertext of a vault block can return the decrypted plaintext value.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// Func adapts an ordinary function to the Decrypter interface.
type Func func(ciphertext string) (string, error)

func (f Func) Decrypt(ciphertext string) (string, error) {
	return f(ciphertext)
}
