package cutejson_test

import (
	"fmt"

	"github.com/amterp/cutejson"
)

func ExampleFormat() {
	cfg, err := cutejson.NewBuilder().
		WithIndentationPolicy(cutejson.Spaces).
		WithSpaceCount(2).
		Build()
	if err != nil {
		panic(err)
	}
	out, err := cutejson.Format(`{"person":{"age":20,"tags":["a","b"]}}`, cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// {
	//   "person": {
	//     "age": 20,
	//     "tags": [
	//       "a",
	//       "b"
	//     ]
	//   }
	// }
}

func ExampleBuilder_Err() {
	b := cutejson.NewBuilder().WithSpaceCount(-1)
	fmt.Println(b.Err())
	// Output:
	// cutejson: spaceCount: invalid space count provided: -1
}
