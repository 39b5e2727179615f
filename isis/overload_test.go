/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package isis_test

import (
	"github.com/nabbar/isis-lab/isis"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// S3: sticky overload sets and clears the flag with no timer involved,
// and the change is reflected in the node's self-LSP.
var _ = Describe("Sticky overload (S3)", func() {
	var p *pair

	BeforeEach(func() {
		p = newPair("r5", "r6", 5, 6)
		p.up()
	})

	AfterEach(func() {
		p.teardown()
	})

	It("sets and clears OVERLOAD without arming a timer", func() {
		p.instA.SetOverload(isis.OverloadSticky, 0)

		Expect(p.instA.IsOverloadOn()).To(BeTrue())
		Expect(p.instA.IsOverloadTimerArmed()).To(BeFalse())
		Eventually(p.instA.SelfLSPIsOverload, "10s", "200ms").Should(BeTrue())

		p.instA.UnsetOverload(isis.OverloadSticky, 0)

		Expect(p.instA.IsOverloadOn()).To(BeFalse())
		Eventually(p.instA.SelfLSPIsOverload, "10s", "200ms").Should(BeFalse())
	})
})

// S4: a timed overload arms a timer, sets the flag for its duration,
// then the timer fires and clears the flag on its own.
var _ = Describe("Timed overload (S4)", func() {
	var p *pair

	BeforeEach(func() {
		p = newPair("r7", "r8", 7, 8)
		p.up()
	})

	AfterEach(func() {
		p.teardown()
	})

	It("arms a timer, holds overload, then self-clears on expiry", func() {
		p.instA.SetOverload(isis.OverloadTimeout, 2)

		Expect(p.instA.IsOverloadTimerArmed()).To(BeTrue())
		Expect(p.instA.IsOverloadOn()).To(BeTrue())

		Eventually(p.instA.IsOverloadTimerArmed, "10s", "200ms").Should(BeFalse())
		Eventually(p.instA.IsOverloadOn, "10s", "200ms").Should(BeFalse())
	})

	It("rearms on a second call with a different value instead of stacking timers", func() {
		p.instA.SetOverload(isis.OverloadTimeout, 30)
		Expect(p.instA.IsOverloadTimerArmed()).To(BeTrue())

		p.instA.SetOverload(isis.OverloadTimeout, 2)
		Expect(p.instA.IsOverloadTimerArmed()).To(BeTrue())

		Eventually(p.instA.IsOverloadTimerArmed, "10s", "200ms").Should(BeFalse())
	})
})
